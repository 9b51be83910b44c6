package app

import "github.com/gin-gonic/gin"

// Module defines the contract for a self-registering content module.
// Each module registers its public read routes and its admin routes.
type Module interface {
	RegisterRoutes(public *gin.RouterGroup, admin *gin.RouterGroup)
}
