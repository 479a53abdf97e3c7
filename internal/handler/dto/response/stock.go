package response

import (
	"account-shop/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type StockResponse struct {
	Total     int64 `json:"total"`
	Consumed  int64 `json:"consumed"`
	Reserved  int64 `json:"reserved"`
	Available int64 `json:"available"`
}

func FromStockView(rm *queries.StockView) (*StockResponse, error) {
	var resp StockResponse
	if err := copier.Copy(&resp, rm); err != nil {
		return nil, err
	}
	return &resp, nil
}
