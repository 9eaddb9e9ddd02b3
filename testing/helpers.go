// Package testing provides shared model types for morph tests and
// benchmarks.
package testing

// Account and AccountView declare identical field names and types; every
// field maps with a direct copy.
type Account struct {
	ID     int
	Email  string
	Active bool
	Scores []int
	Tags   map[string]string
}

// AccountView mirrors Account field for field.
type AccountView struct {
	ID     int
	Email  string
	Active bool
	Scores []int
	Tags   map[string]string
}

// Profile exercises nullable coercions in both directions.
type Profile struct {
	Age   *int
	Score int
}

// ProfileView narrows Age and widens Score.
type ProfileView struct {
	Age   int
	Score *int
}

// Credentials carries an excluded source field.
type Credentials struct {
	User     string
	Password string `morph:"-"`
}

// CredentialsView matches Credentials by name and type; Password must
// still never be copied.
type CredentialsView struct {
	User     string
	Password string
}

// Customer is a nested model type.
type Customer struct {
	ID   int
	Name string
}

// Item is a collection element model type.
type Item struct {
	SKU string
	Qty int
}

// Order combines nested object, collection, and direct-copy fields.
type Order struct {
	ID       int
	Customer *Customer
	Items    []Item
	Labels   []string
}

// CustomerView mirrors Customer.
type CustomerView struct {
	ID   int
	Name string
}

// ItemView mirrors Item.
type ItemView struct {
	SKU string
	Qty int
}

// OrderView is the transport shape of Order.
type OrderView struct {
	ID       int
	Customer *CustomerView
	Items    []ItemView
	Labels   []string
}

// Node is a self-referential model type; instances terminate at a nil
// Parent.
type Node struct {
	ID     int
	Parent *Node
}

// NodeView mirrors Node's self-reference.
type NodeView struct {
	ID     int
	Parent *NodeView
}
