package handlers

import (
	"strings"

	"github.com/bahadricoz/shift/cmd/docs"
	portssvc "github.com/bahadricoz/shift/internal/core/ports/services"
	"github.com/bahadricoz/shift/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerRequestValidators()

	registerHomeRoutes(r)

	// API v1 routes; the capability resolver runs engine-wide, so the
	// groups only wire handlers
	setupAPIV1Routes(r, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerAccessLinkRoutes(v1, services.Access)
	registerDepartmentRoutes(v1, services.Department)
	registerTeamMemberRoutes(v1, services.TeamMember)
	registerShiftRoutes(v1, services.Shift)
	registerExportRoutes(v1, services.Export)
}

// registerRequestValidators installs custom binding validators on gin's
// shared validator engine.
func registerRequestValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("foodpayment", func(fl validator.FieldLevel) bool {
			switch strings.ToUpper(strings.TrimSpace(fl.Field().String())) {
			case "YES", "NO":
				return true
			}
			return false
		})
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
