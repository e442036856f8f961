package handlers

import (
	"github.com/jmoiron/sqlx"

	applog "aquastock/internal/log"
	"aquastock/internal/repos"
	"aquastock/internal/services"
)

type Deps struct {
	OrderHandler   *OrderHandler
	ProductHandler *ProductHandler
}

func NewDeps(db *sqlx.DB, debug *applog.FileLog) *Deps {
	orderRepo := repos.NewOrderRepo(db)
	prodRepo := repos.NewProductRepo(db)

	orderSvc := services.NewOrderService(orderRepo, debug)
	prodSvc := services.NewProductService(prodRepo, debug)

	return &Deps{
		OrderHandler:   &OrderHandler{Order: orderSvc},
		ProductHandler: &ProductHandler{Products: prodSvc},
	}
}
