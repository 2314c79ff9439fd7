// Package rowstore is the gateway to the PostgREST row store that holds
// the nine airport-operations tables. It exposes a single Select
// operation and deliberately never returns an error: any transport or
// configuration failure is logged and surfaces as an empty row set, which
// the rest of the pipeline treats as "no data found".
package rowstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"airops/app/config"

	"github.com/samber/do"
)

const requestTimeout = 45 * time.Second

// Row is the loosely-typed transport representation of one table row.
// Column names are exact strings with spaces and mixed case; typed
// conversion happens in the tables package, not here.
type Row map[string]any

type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpLte Op = "lte"
)

type Filter struct {
	Column string
	Op     Op
	Value  string
}

func Eq(column, value string) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

func Gte(column, value string) Filter {
	return Filter{Column: column, Op: OpGte, Value: value}
}

func Lte(column, value string) Filter {
	return Filter{Column: column, Op: OpLte, Value: value}
}

type Order struct {
	Column    string
	Ascending bool
}

// Selector is the read contract the fetch service depends on. The tests
// substitute a fake; Client is the production implementation.
type Selector interface {
	Select(ctx context.Context, table string, filters []Filter, limit int, order *Order) []Row
}

type Client struct {
	cfg  *config.Config
	http *http.Client
}

var _ Selector = (*Client)(nil)

func NewClient(di *do.Injector) (*Client, error) {
	return &Client{
		cfg: do.MustInvoke[*config.Config](di),
		http: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

func (c *Client) Configured() bool {
	return c.cfg.Store.URL != "" && c.cfg.Store.Key != ""
}

func (c *Client) Select(ctx context.Context, table string, filters []Filter, limit int, order *Order) []Row {
	if !c.Configured() {
		slog.Error("row store is not configured, returning no rows", "table", table)
		return nil
	}

	endpoint := strings.TrimRight(c.cfg.Store.URL, "/") + "/rest/v1/" + table

	params := url.Values{}
	params.Set("select", "*")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	encodeFilters(params, filters)
	if order != nil {
		direction := "desc"
		if order.Ascending {
			direction = "asc"
		}
		params.Set("order", order.Column+"."+direction)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		slog.Error("failed to build row store request", "table", table, "error", err)
		return nil
	}

	req.Header.Set("apikey", c.cfg.Store.Key)
	req.Header.Set("Authorization", "Bearer "+c.cfg.Store.Key)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("row store request failed", "table", table, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Error("row store returned an error status",
			"table", table,
			"status", resp.StatusCode,
			"body", string(body))
		return nil
	}

	var rows []Row
	if err = json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		slog.Error("failed to decode row store response", "table", table, "error", err)
		return nil
	}

	slog.Debug("fetched rows", "table", table, "count", len(rows))

	return rows
}

// encodeFilters writes equality predicates as plain column params and
// folds every range predicate into a single and=(...) expression, the
// way PostgREST expects combined bounds.
func encodeFilters(params url.Values, filters []Filter) {
	var rangeParts []string

	for _, f := range filters {
		switch f.Op {
		case OpEq:
			params.Set(f.Column, "eq."+f.Value)
		case OpGte, OpLte:
			rangeParts = append(rangeParts, fmt.Sprintf("%s.%s.%s", f.Column, f.Op, f.Value))
		}
	}

	if len(rangeParts) > 0 {
		params.Set("and", "("+strings.Join(rangeParts, ",")+")")
	}
}
