package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MikeMC777/swadishta/internal/cart"
	"github.com/MikeMC777/swadishta/internal/docstore"
	"github.com/MikeMC777/swadishta/internal/menu"
	"github.com/MikeMC777/swadishta/internal/order"
	"github.com/MikeMC777/swadishta/internal/report"
)

type orderingContext struct {
	menu     map[string]menu.Item
	ledger   *cart.Ledger
	engine   *order.Engine
	last     *order.Order
	lastDone order.Transition
	err      error
}

func (c *orderingContext) reset() {
	c.menu = map[string]menu.Item{}
	c.ledger = &cart.Ledger{}
	c.engine = order.NewEngine(order.NewDocRepo(docstore.NewMemoryStore()), zap.NewNop())
	c.last = nil
	c.lastDone = order.Transition{}
	c.err = nil
}

func (c *orderingContext) theMenuHasTheFollowingItems(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		price, err := decimal.NewFromString(row.Cells[1].Value)
		if err != nil {
			return err
		}
		name := row.Cells[0].Value
		c.menu[name] = menu.Item{ID: fmt.Sprintf("m%d", i), Name: name, Price: price}
	}
	return nil
}

func (c *orderingContext) item(name string) (menu.Item, error) {
	it, ok := c.menu[name]
	if !ok {
		return menu.Item{}, fmt.Errorf("no menu item %q", name)
	}
	return it, nil
}

func (c *orderingContext) iAddToTheCart(name string) error {
	it, err := c.item(name)
	if err != nil {
		return err
	}
	c.ledger.Add(it)
	return nil
}

func (c *orderingContext) iDecrement(name string) error {
	it, err := c.item(name)
	if err != nil {
		return err
	}
	c.ledger.Decrement(it.ID)
	return nil
}

func (c *orderingContext) theCartTotalIs(want string) error {
	if got := c.ledger.TotalAmount(); !got.Equal(decimal.RequireFromString(want)) {
		return fmt.Errorf("cart total %s, want %s", got, want)
	}
	return nil
}

func (c *orderingContext) theCartHoldsItems(want int) error {
	if got := c.ledger.TotalItems(); got != want {
		return fmt.Errorf("cart holds %d items, want %d", got, want)
	}
	return nil
}

func (c *orderingContext) theCartDoesNotContain(name string) error {
	it, err := c.item(name)
	if err != nil {
		return err
	}
	for _, l := range c.ledger.Lines() {
		if l.ID == it.ID {
			return fmt.Errorf("cart still has %q", name)
		}
	}
	return nil
}

func (c *orderingContext) checksOutAtTable(name, mobile, table string) error {
	o, err := c.engine.Submit(context.Background(), order.Customer{Name: name, Mobile: mobile, TableNumber: table}, c.ledger.Lines())
	c.err = err
	if err != nil {
		return nil
	}
	c.last = o
	c.ledger.Clear()
	return nil
}

func (c *orderingContext) theCheckoutFailsWith(msg string) error {
	if c.err == nil {
		return errors.New("expected checkout to fail but it succeeded")
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("error %q does not contain %q", c.err, msg)
	}
	return nil
}

func (c *orderingContext) requireOrder() error {
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	if c.last == nil {
		return errors.New("no order was submitted")
	}
	return nil
}

func (c *orderingContext) theOrderTotalIs(want string) error {
	if err := c.requireOrder(); err != nil {
		return err
	}
	if !c.last.TotalAmount.Equal(decimal.RequireFromString(want)) {
		return fmt.Errorf("order total %s, want %s", c.last.TotalAmount, want)
	}
	if !c.last.TotalAmount.Equal(c.last.LinesTotal()) {
		return errors.New("order total does not match its lines")
	}
	return nil
}

func (c *orderingContext) theOrderStatusIs(want string) error {
	if err := c.requireOrder(); err != nil {
		return err
	}
	o, err := c.engine.Get(context.Background(), c.last.ID)
	if err != nil {
		return err
	}
	if string(o.Status) != want {
		return fmt.Errorf("status %s, want %s", o.Status, want)
	}
	return nil
}

func (c *orderingContext) theOrderHasLines(want int) error {
	if err := c.requireOrder(); err != nil {
		return err
	}
	if len(c.last.Items) != want {
		return fmt.Errorf("order has %d lines, want %d", len(c.last.Items), want)
	}
	return nil
}

func (c *orderingContext) staffCompleteTheOrder() error {
	if err := c.requireOrder(); err != nil {
		return err
	}
	tr, err := c.engine.Complete(context.Background(), c.last.ID)
	if err != nil {
		return err
	}
	c.lastDone = tr
	return nil
}

func (c *orderingContext) theLastCompletionWasAlreadyCompleted() error {
	if !c.lastDone.AlreadyCompleted {
		return errors.New("expected the completion to be flagged as already completed")
	}
	return nil
}

func (c *orderingContext) anOrderWith(status string, qty int, name string) error {
	it, err := c.item(name)
	if err != nil {
		return err
	}
	ctx := context.Background()
	o, err := c.engine.Submit(ctx, order.Customer{Name: "Guest", Mobile: "9000000000", TableNumber: "1"},
		[]cart.Line{{Item: it, Quantity: qty}})
	if err != nil {
		return err
	}
	if status == "completed" {
		_, err = c.engine.Complete(ctx, o.ID)
	}
	return err
}

func (c *orderingContext) hasSold(name string, want int) error {
	orders, err := c.engine.List(context.Background())
	if err != nil {
		return err
	}
	for _, s := range report.ItemSalesBreakdown(orders) {
		if s.Name == name {
			if s.Quantity != want {
				return fmt.Errorf("%s sold %d, want %d", name, s.Quantity, want)
			}
			return nil
		}
	}
	return fmt.Errorf("%s not in breakdown", name)
}

func (c *orderingContext) theTopSellerIs(want string) error {
	orders, err := c.engine.List(context.Background())
	if err != nil {
		return err
	}
	top, ok := report.TopSeller(report.ItemSalesBreakdown(orders))
	if !ok || top.Name != want {
		return fmt.Errorf("top seller %q, want %q", top.Name, want)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &orderingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the menu has the following items:$`, tc.theMenuHasTheFollowingItems)
	ctx.Step(`^a (completed|pending) order with (\d+) "([^"]*)"$`, tc.anOrderWith)

	// When steps
	ctx.Step(`^I add "([^"]*)" to the cart$`, tc.iAddToTheCart)
	ctx.Step(`^I decrement "([^"]*)"$`, tc.iDecrement)
	ctx.Step(`^"([^"]*)" with mobile "([^"]*)" checks out at table "([^"]*)"$`, tc.checksOutAtTable)
	ctx.Step(`^staff complete the order$`, tc.staffCompleteTheOrder)

	// Then steps
	ctx.Step(`^the cart total is (\d+(?:\.\d+)?)$`, tc.theCartTotalIs)
	ctx.Step(`^the cart holds (\d+) items$`, tc.theCartHoldsItems)
	ctx.Step(`^the cart does not contain "([^"]*)"$`, tc.theCartDoesNotContain)
	ctx.Step(`^the checkout fails with "([^"]*)"$`, tc.theCheckoutFailsWith)
	ctx.Step(`^the order total is (\d+(?:\.\d+)?)$`, tc.theOrderTotalIs)
	ctx.Step(`^the order status is "([^"]*)"$`, tc.theOrderStatusIs)
	ctx.Step(`^the order has (\d+) lines$`, tc.theOrderHasLines)
	ctx.Step(`^the last completion was already completed$`, tc.theLastCompletionWasAlreadyCompleted)
	ctx.Step(`^"([^"]*)" has sold (\d+)$`, tc.hasSold)
	ctx.Step(`^the top seller is "([^"]*)"$`, tc.theTopSellerIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"ordering.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
