package models

// Requests for drawdown HTTP endpoints. Defined in domain for consistency and reuse.

type DrawdownRequest struct {
	ID    string `param:"id" json:"id" validate:"required"`
	TF    string `query:"tf" json:"tf" validate:"omitempty,oneof=1m 5m"`
	Debug bool   `query:"debug" json:"debug" default:"false"`
}

type DrawdownBatchRequest struct {
	IDs   []string `json:"ids" validate:"required,min=1,max=200,dive,required"`
	TF    string   `json:"tf" validate:"omitempty,oneof=1m 5m"`
	Debug bool     `json:"debug" default:"false"`
}
