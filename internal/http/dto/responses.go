package dto

// TxView is one row of the transaction history page.
type TxView struct {
	Hash      string
	Action    string
	ValueWei  string
	Status    string
	Block     string
	CreatedAt string
}
