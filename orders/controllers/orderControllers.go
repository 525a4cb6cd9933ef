package controllers

import (
	"sales-management-backend/orders/repositories"
	"sales-management-backend/orders/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type OrderController struct {
	OrderRepo     repositories.OrderRepository
	ImportService *services.ImportService
	DB            *gorm.DB
	RedisClient   *redis.Client
}
