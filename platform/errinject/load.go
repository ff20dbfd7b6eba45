package errinject

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load читает каталог сценариев из YAML файла:
//
//	payment-service:
//	  - name: payment_declined
//	    rate: 0.06
//	    endpoints: ["/process", "/charge"]
//	    error: PaymentDeclinedException
//	    message: Payment declined by card issuer
//	    status_code: 402
//
// Порядок сценариев внутри сервиса сохраняется как порядок проверки.
// Сценарий без status_code получает 500, без endpoints — действует везде
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse scenario file %s: %w", path, err)
	}

	for service, scenarios := range catalog {
		for i := range scenarios {
			sc := &scenarios[i]
			if sc.Name == "" {
				return nil, fmt.Errorf("scenario file %s: %s: scenario #%d has no name", path, service, i+1)
			}
			if sc.Rate < 0 || sc.Rate > 1 {
				return nil, fmt.Errorf("scenario file %s: %s/%s: rate %v out of [0..1]", path, service, sc.Name, sc.Rate)
			}
			if sc.StatusCode == 0 {
				sc.StatusCode = 500
			}
		}
	}
	return catalog, nil
}
