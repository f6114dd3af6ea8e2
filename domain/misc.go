package domain

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// UserId identifies an account across products, bids and payments
type UserId string

func (id UserId) String() string {
	return string(id)
}

func (id UserId) IsEmpty() bool {
	return len(id) == 0
}

type ProductId string

func (id ProductId) String() string {
	return string(id)
}

type BidId string

func (id BidId) String() string {
	return string(id)
}

// PaymentRef is the correlation id of a mobile money transaction
type PaymentRef string

func (r PaymentRef) String() string {
	return string(r)
}

type Role string

const (
	RoleFarmer Role = "farmer"
	RoleBuyer  Role = "buyer"
	RoleAdmin  Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleFarmer, RoleBuyer, RoleAdmin:
		return true
	}
	return false
}
