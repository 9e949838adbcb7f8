package shared

type Currency string

// EUR is the only currency payments are generated in.
const EUR Currency = "EUR"
