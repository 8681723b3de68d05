package uow

// AggregateKind identifies which variant of the closed Aggregate union is populated.
type AggregateKind int

const (
	// KindUser marks the User variant.
	KindUser AggregateKind = iota

	// KindShop marks the Shop variant.
	KindShop

	// KindOrder marks the Order variant.
	KindOrder
)

// String returns the lowercase name of the aggregate kind.
func (k AggregateKind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindShop:
		return "shop"
	case KindOrder:
		return "order"
	default:
		return "unknown"
	}
}

// Aggregate is a closed tagged union over the supported entity variants.
// Exactly one variant is populated per instance. Adding a variant is a
// deliberate edit to this union, its constructor, and the replay dispatch
// in the coordinator; the compiler then flags every consumer switch.
type Aggregate struct {
	kind  AggregateKind
	user  User
	shop  Shop
	order Order
}

// UserAggregate converts a User into the Aggregate union; lossless and infallible.
func UserAggregate(user User) Aggregate {
	return Aggregate{kind: KindUser, user: user}
}

// ShopAggregate converts a Shop into the Aggregate union; lossless and infallible.
func ShopAggregate(shop Shop) Aggregate {
	return Aggregate{kind: KindShop, shop: shop}
}

// OrderAggregate converts an Order into the Aggregate union; lossless and infallible.
func OrderAggregate(order Order) Aggregate {
	return Aggregate{kind: KindOrder, order: order}
}

// Kind returns which variant is populated.
func (a Aggregate) Kind() AggregateKind {
	return a.kind
}

// User returns the User variant and whether it is the populated one.
func (a Aggregate) User() (User, bool) {
	return a.user, a.kind == KindUser
}

// Shop returns the Shop variant and whether it is the populated one.
func (a Aggregate) Shop() (Shop, bool) {
	return a.shop, a.kind == KindShop
}

// Order returns the Order variant and whether it is the populated one.
func (a Aggregate) Order() (Order, bool) {
	return a.order, a.kind == KindOrder
}
