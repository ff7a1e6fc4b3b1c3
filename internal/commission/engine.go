package commission

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/commission-cli/internal/model"
	"github.com/sells-group/commission-cli/internal/rates"
)

// Options configures an Engine.
type Options struct {
	Catalog     *rates.Catalog // nil uses rates.DefaultCatalog
	Concurrency int            // max orders evaluated at once, <= 1 is sequential
}

// Engine computes commission columns for a batch of line items. It holds no
// per-run state and may be shared.
type Engine struct {
	catalog     *rates.Catalog
	concurrency int
}

// New creates an Engine.
func New(opts Options) *Engine {
	cat := opts.Catalog
	if cat == nil {
		cat = rates.DefaultCatalog()
	}
	n := opts.Concurrency
	if n < 1 {
		n = 1
	}
	return &Engine{catalog: cat, concurrency: n}
}

// Result is the outcome of one run. Rows is index-aligned with the input
// line items.
type Result struct {
	RunID  string
	Rows   []model.Derived
	Orders []model.OrderSummary
	Report Report
}

// group holds one order and the input positions of its items.
type group struct {
	order model.Order
	index []int
}

// GroupOrders groups line items by order id, in order of first appearance.
func GroupOrders(items []model.LineItem) []model.Order {
	groups := groupItems(items)
	orders := make([]model.Order, len(groups))
	for i, g := range groups {
		orders[i] = g.order
	}
	return orders
}

func groupItems(items []model.LineItem) []group {
	pos := make(map[string]int)
	var groups []group
	for i, li := range items {
		k, ok := pos[li.OrderID]
		if !ok {
			k = len(groups)
			pos[li.OrderID] = k
			groups = append(groups, group{order: model.Order{ID: li.OrderID}})
		}
		groups[k].order.Items = append(groups[k].order.Items, li)
		groups[k].index = append(groups[k].index, i)
	}
	return groups
}

// Run classifies every order in items and computes its commission columns.
// Once started it never fails on data: unsupported types and inapplicable
// amounts yield zeros. It only returns an error if ctx is cancelled.
func (e *Engine) Run(ctx context.Context, items []model.LineItem) (*Result, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))

	groups := groupItems(items)
	rows := make([]model.Derived, len(items))
	summaries := make([]model.OrderSummary, len(groups))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for k, grp := range groups {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return eris.Wrap(err, "commission: run cancelled")
			}
			out, summary := e.evaluate(grp.order)
			// Each order owns its own positions, so writes never overlap.
			for j, idx := range grp.index {
				rows[idx] = out[j]
			}
			summary.FirstRow = grp.index[0]
			summaries[k] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The order total lives on the order's first row only.
	for _, s := range summaries {
		rows[s.FirstRow].OrderTotal = s.Total
	}

	report := buildReport(runID, items, summaries)
	log.Info("commission: run complete",
		zap.Int("rows", report.Rows),
		zap.Int("orders", report.Orders),
		zap.Int("unsupported_orders", report.Unsupported),
		zap.String("total_commission", report.TotalCommission.StringFixed(2)),
	)

	return &Result{
		RunID:  runID,
		Rows:   rows,
		Orders: summaries,
		Report: report,
	}, nil
}

// evaluate classifies one order and runs its calculator. OrderTotal is left
// zero on every row; Run places it.
func (e *Engine) evaluate(o model.Order) ([]model.Derived, model.OrderSummary) {
	typ := Classify(o.Items)
	out := make([]model.Derived, len(o.Items))
	for i := range out {
		out[i].Type = typ
	}

	if calc, ok := calculators[typ]; ok {
		calc(e.catalog, o.Items, out)
	} else {
		zap.L().Debug("commission: no formula for type",
			zap.String("order_id", o.ID),
			zap.String("type", string(typ)),
		)
	}

	return out, model.OrderSummary{
		OrderID:     o.ID,
		Type:        typ,
		FirstRow:    o.FirstRow(),
		Rows:        len(o.Items),
		Salesperson: o.Items[0].Salesperson,
		Total:       orderTotal(out),
	}
}
