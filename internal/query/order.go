package query

// Order is the unified sort vocabulary of HandiworkSearchQuery
type Order string

const (
	OrderDate      Order = "date"
	OrderLikes     Order = "likes"
	OrderRelevance Order = "relevance"
	OrderReplies   Order = "replies"
	OrderTitle     Order = "title"
	OrderViews     Order = "views"
)

// Orders lists every unified order value
var Orders = []Order{OrderDate, OrderLikes, OrderRelevance, OrderReplies, OrderTitle, OrderViews}

// LatestOrder is the sort vocabulary of the latest-listing backend
type LatestOrder string

const (
	LatestOrderDate   LatestOrder = "date"
	LatestOrderLikes  LatestOrder = "likes"
	LatestOrderViews  LatestOrder = "views"
	LatestOrderTitle  LatestOrder = "title"
	LatestOrderRating LatestOrder = "rating"
)

var latestOrders = []LatestOrder{LatestOrderDate, LatestOrderLikes, LatestOrderViews, LatestOrderTitle, LatestOrderRating}

// ThreadOrder is the sort vocabulary of the thread-search backend
type ThreadOrder string

const (
	ThreadOrderDate      ThreadOrder = "date"
	ThreadOrderRelevance ThreadOrder = "relevance"
	ThreadOrderReplies   ThreadOrder = "replies"
	ThreadOrderViews     ThreadOrder = "views"
	ThreadOrderTitle     ThreadOrder = "title"
)

var threadOrders = []ThreadOrder{ThreadOrderDate, ThreadOrderRelevance, ThreadOrderReplies, ThreadOrderViews, ThreadOrderTitle}

// Remap tables. Every unified order has an entry in both; where a backend
// has no equivalent the closest supported order is substituted.
var (
	latestRemap = map[Order]LatestOrder{
		OrderDate:      LatestOrderDate,
		OrderLikes:     LatestOrderLikes,
		OrderRelevance: LatestOrderRating,
		OrderReplies:   LatestOrderViews,
		OrderTitle:     LatestOrderTitle,
		OrderViews:     LatestOrderViews,
	}
	threadRemap = map[Order]ThreadOrder{
		OrderDate:      ThreadOrderDate,
		OrderLikes:     ThreadOrderRelevance,
		OrderRelevance: ThreadOrderRelevance,
		OrderReplies:   ThreadOrderReplies,
		OrderTitle:     ThreadOrderTitle,
		OrderViews:     ThreadOrderViews,
	}
)

// ToLatestOrder maps o into the latest backend's vocabulary
func ToLatestOrder(o Order) (LatestOrder, bool) {
	lo, ok := latestRemap[o]
	return lo, ok
}

// ToThreadOrder maps o into the thread backend's vocabulary
func ToThreadOrder(o Order) (ThreadOrder, bool) {
	to, ok := threadRemap[o]
	return to, ok
}

func (o Order) Valid() bool {
	_, ok := latestRemap[o]
	return ok
}

func (o LatestOrder) Valid() bool {
	for _, v := range latestOrders {
		if v == o {
			return true
		}
	}
	return false
}

func (o ThreadOrder) Valid() bool {
	for _, v := range threadOrders {
		if v == o {
			return true
		}
	}
	return false
}
