// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/boonebg/unconfirmed/internal/app/resources"
	userstore "github.com/boonebg/unconfirmed/internal/app/store/users"
	"github.com/boonebg/unconfirmed/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	viewdata.Init(appCfg.SiteName)

	if appCfg.AdminEmail != "" && appCfg.AdminPassword != "" {
		name := appCfg.AdminName
		if name == "" {
			name = "Administrator"
		}
		u, err := userstore.New(deps.MongoDatabase).EnsureAdmin(ctx, name, appCfg.AdminEmail, appCfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		logger.Info("administrator ensured", zap.String("email", u.Email))
	}

	return nil
}
