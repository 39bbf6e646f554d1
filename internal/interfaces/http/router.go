package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-admin/internal/application/usecase"
	"github.com/jhoicas/inventario-admin/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC       *usecase.UserUseCase
	AreaUC       *usecase.AreaUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	AssignmentUC *usecase.AssignmentUseCase
	JWTSecret    string
	JWTIssuer    string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; salvo /me, también el permiso de la matriz.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	api.Get("/me", Me)

	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequirePermission(access.UsersView), userHandler.List)
	users.Get("/:id", RequirePermission(access.UsersView), userHandler.GetByID)
	users.Put("/:id", RequirePermission(access.UsersEdit), userHandler.Update)
	users.Patch("/:id/status", RequirePermission(access.UsersToggleStatus), userHandler.SetStatus)
	users.Get("/:id/assignments", RequirePermission(access.UsersView), userHandler.Assignments)
	users.Get("/:id/history/assignments", RequirePermission(access.HistoryView), userHandler.AssignmentHistory)
	users.Get("/:id/history/enablement", RequirePermission(access.HistoryView), userHandler.EnablementHistory)

	areas := api.Group("/areas")
	areaHandler := NewAreaHandler(deps.AreaUC)
	areas.Post("/", RequirePermission(access.AreasManage), areaHandler.Create)
	areas.Get("/", RequirePermission(access.AreasView), areaHandler.List)
	areas.Get("/:id", RequirePermission(access.AreasView), areaHandler.GetByID)
	areas.Put("/:id/warehouses", RequirePermission(access.AreasManage, access.AssignmentsManage), areaHandler.SetWarehouses)

	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequirePermission(access.WarehousesManage), warehouseHandler.Create)
	warehouses.Get("/", RequirePermission(access.WarehousesView), warehouseHandler.List)
	warehouses.Get("/:id", RequirePermission(access.WarehousesView), warehouseHandler.GetByID)
	warehouses.Put("/:id", RequirePermission(access.WarehousesManage), warehouseHandler.Update)

	assignments := api.Group("/assignments")
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)
	assignments.Delete("/:id", RequirePermission(access.AssignmentsManage), assignmentHandler.Revoke)
}
