package service

import (
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/repository"
)

func toDomainOrder(o repository.Order, items []repository.ListOrderItemsRow) domain.Order {
	order := domain.Order{
		ID:        o.ID,
		Status:    domain.OrderStatus(o.Status),
		FullName:  o.FullName,
		Phone:     o.Phone,
		Email:     o.Email,
		Address:   o.Address,
		Comment:   o.Comment,
		TotalCost: o.TotalAmount,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Items:     make([]domain.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		if item.OrderID != o.ID {
			continue
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:    item.ProductID,
			Title:        item.Title,
			Slug:         item.Slug,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
			Amount:       domain.LineAmount(item.Quantity, item.PriceAtOrder),
		})
	}
	return order
}
