package models

const (
	VerdictPass = "PASS"
	VerdictFail = "FAIL"
)

type ExpectedItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Expectation is what the security guard expects to find in the customer's bag.
type Expectation struct {
	ReceiptID      string         `json:"receiptId"`
	ExpectedWeight int            `json:"expectedWeight"`
	TotalPrice     int            `json:"totalPrice"`
	Items          []ExpectedItem `json:"items"`
}

type Verdict struct {
	ExpectedWeight int    `json:"expectedWeight"`
	ObservedWeight int    `json:"observedWeight"`
	Variance       int    `json:"variance"`
	Tolerance      int    `json:"tolerance"`
	Mismatch       bool   `json:"mismatch"`
	Result         string `json:"result"`
}
