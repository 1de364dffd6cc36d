package bootstrap

import (
	"storefront-api/internal/infra/gateway"
	"storefront-api/internal/pkg/config"
	"storefront-api/internal/pkg/signature"
	"storefront-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			gateway.NewRazorpayClient,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			func(cfg config.RazorpayConfig) *signature.HMACVerifier {
				return signature.NewHMACVerifier(cfg.KeySecret)
			},
			fx.As(new(commands.SignatureVerifier)),
		),
		func(cfg config.RazorpayConfig) commands.PaymentSettings {
			return commands.PaymentSettings{KeyID: cfg.KeyID, Currency: cfg.Currency}
		},
	),
)
