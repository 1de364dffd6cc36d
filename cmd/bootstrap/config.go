package bootstrap

import (
	"storefront-api/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	ConfigSections,
)

// ConfigSections splits a provided config.Config into the sections components depend on.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.RazorpayConfig { return cfg.Razorpay },
	func(cfg config.Config) config.CouponConfig { return cfg.Coupon },
	func(cfg config.Config) config.MessagingConfig { return cfg.Messaging },
)
