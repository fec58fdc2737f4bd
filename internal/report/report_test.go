package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/swadishta/internal/order"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func mk(id string, status order.Status, created time.Time, lines ...order.Line) order.Order {
	o := order.Order{ID: id, Status: status, CreatedAt: created, Items: lines}
	o.TotalAmount = o.LinesTotal()
	return o
}

func line(name, price string, qty int) order.Line {
	return order.Line{Name: name, Price: decimal.RequireFromString(price), Quantity: qty}
}

func fixture() []order.Order {
	// newest first, as the repository returns them
	return []order.Order{
		mk("p1", order.StatusPending, time.Date(2024, 3, 2, 5, 0, 0, 0, time.UTC), line("Paneer Tikka", "280", 10)),
		mk("c3", order.StatusCompleted, time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC), line("Lassi", "60", 5)),
		mk("c2", order.StatusCompleted, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), line("Paneer Tikka", "280", 2), line("Lassi", "60", 1)),
		mk("c1", order.StatusCompleted, time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), line("Paneer Tikka", "280", 3)),
	}
}

func ids(orders []order.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestLiveOrders(t *testing.T) {
	assert.Equal(t, []string{"p1"}, ids(LiveOrders(fixture())))
}

func TestHistory(t *testing.T) {
	orders := fixture()
	// scramble source order; history sorts by itself
	orders[1], orders[3] = orders[3], orders[1]

	assert.Equal(t, []string{"c3", "c2", "c1"}, ids(History(orders, nil, time.UTC)))

	day, err := ParseDay("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"c3", "c2"}, ids(History(orders, &day, time.UTC)))

	// 20:00 UTC on Mar 1 is already Mar 2 in IST
	assert.Equal(t, []string{"c2"}, ids(History(orders, &day, ist)))

	_, err = ParseDay("01/03/2024")
	assert.Error(t, err)
}

func TestRevenue(t *testing.T) {
	orders := fixture()
	assert.True(t, TotalRevenue(orders).Equal(decimal.RequireFromString("1760")), TotalRevenue(orders).String())

	now := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	assert.True(t, TodayRevenue(orders, now, time.UTC).Equal(decimal.RequireFromString("920")))
	assert.True(t, TodayRevenue(nil, now, time.UTC).IsZero())
}

func TestItemSalesBreakdown(t *testing.T) {
	b := ItemSalesBreakdown(fixture())
	assert.Equal(t, []ItemSales{{"Lassi", 6}, {"Paneer Tikka", 5}}, b)

	top, ok := TopSeller(b)
	assert.True(t, ok)
	assert.Equal(t, "Lassi", top.Name)
}

func TestItemSalesBreakdown_PaneerTikkaTopSeller(t *testing.T) {
	orders := []order.Order{
		mk("a", order.StatusCompleted, time.Now(), line("Paneer Tikka", "280", 3)),
		mk("b", order.StatusCompleted, time.Now(), line("Paneer Tikka", "280", 2), line("Naan", "40", 4)),
	}
	b := ItemSalesBreakdown(orders)
	top, ok := TopSeller(b)
	require.True(t, ok)
	assert.Equal(t, ItemSales{Name: "Paneer Tikka", Quantity: 5}, top)
}

func TestItemSalesBreakdown_IgnoresPending(t *testing.T) {
	base := fixture()
	before := ItemSalesBreakdown(base)

	extra := append(base, mk("p2", order.StatusPending, time.Now(), line("Kulfi", "90", 50), line("Lassi", "60", 50)))
	assert.Equal(t, before, ItemSalesBreakdown(extra))
}

func TestItemSalesBreakdown_TiesKeepFirstSeen(t *testing.T) {
	orders := []order.Order{
		mk("a", order.StatusCompleted, time.Now(), line("Samosa", "20", 2), line("Chai", "15", 2)),
		mk("b", order.StatusCompleted, time.Now(), line("Jalebi", "30", 2)),
	}
	b := ItemSalesBreakdown(orders)
	assert.Equal(t, []string{"Samosa", "Chai", "Jalebi"}, []string{b[0].Name, b[1].Name, b[2].Name})
}

func TestTopSeller_NoSales(t *testing.T) {
	b := ItemSalesBreakdown(LiveOrders(fixture()))
	assert.Empty(t, b)
	top, ok := TopSeller(b)
	assert.False(t, ok)
	assert.Equal(t, NoSalesLabel, top.Name)
}

func TestAnalyze(t *testing.T) {
	a := Analyze(fixture(), time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, 3, a.CompletedOrders)
	assert.Equal(t, 1, a.PendingOrders)
	assert.True(t, a.HasSales)
	assert.Equal(t, "Lassi", a.TopSeller.Name)
	assert.True(t, a.TodayRevenue.Equal(decimal.NewFromInt(920)))
}
