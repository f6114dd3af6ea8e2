package domain

// Table is a mongo collection name
type Table string

const (
	TableProducts    Table = "products"
	TableBids        Table = "bids"
	TableWinners     Table = "winners"
	TableFeePayments Table = "fee_payments"
)
