package gateway

import (
	"time"

	"github.com/padipay/qris-gateway/internal/provider"
	"github.com/padipay/qris-gateway/internal/qristx"
)

// Config is the configuration for the gateway application. Provider request
// identity values rotate with provider app releases, so they live here
// rather than in code.
type Config struct {
	HTTPAddr string
	// TransactionValidity is the payable window stamped on synthesized QRs.
	TransactionValidity time.Duration

	OrderKuota provider.OrderKuotaConfig
	QiosPay    provider.QiosPayConfig
	Atlantic   provider.AtlanticConfig
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:            "localhost:8980",
		TransactionValidity: qristx.DefaultValidity,
		OrderKuota: provider.OrderKuotaConfig{
			BaseURL:             "https://app.orderkuota.com",
			AppVersionName:      "25.03.14",
			AppVersionCode:      "250314",
			AppRegID:            "di309HvATsaiCppl5eDpoc",
			PhoneModel:          "SM-G988B",
			PhoneAndroidVersion: "13",
		},
		QiosPay: provider.QiosPayConfig{
			BaseURL: "https://qiospay.id",
		},
		Atlantic: provider.AtlanticConfig{
			BaseURL: "https://atlantich2h.com",
		},
	}
}
