package topology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type topologyFile struct {
	Services []Service `yaml:"services"`
}

// Load читает реестр сервисов из YAML файла:
//
//	services:
//	  - name: api-gateway
//	    port: 5000
//	    downstream: [auth-service, order-service]
//
// Используется для нестандартных топологий; обычно достаточно Default
func Load(path, env string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topology file: %w", err)
	}

	var f topologyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse topology file %s: %w", path, err)
	}
	if len(f.Services) == 0 {
		return nil, fmt.Errorf("topology file %s: no services defined", path)
	}
	for _, s := range f.Services {
		if s.Name == "" || s.Port == 0 {
			return nil, fmt.Errorf("topology file %s: service entry without name or port", path)
		}
	}

	return New(env, f.Services), nil
}
