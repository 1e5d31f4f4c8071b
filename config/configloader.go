package config

import (
	"fmt"
	"strings"

	"github.com/remiges-tech/rigel"
	"github.com/remiges-tech/rigel/etcd"
)

// LoadConfigFromFile loads appConfig from a JSON file at filePath.
func LoadConfigFromFile(filePath string, appConfig any) error {
	configSource, err := newFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file config source: %w", err)
	}

	if err := Load(configSource, appConfig); err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	return nil
}

// LoadConfigFromRigel loads appConfig from a Rigel config service reachable
// through the given comma-separated etcd endpoints.
func LoadConfigFromRigel(etcdEndpoints, schemaName string, schemaVersion int, configName string, appConfig any) error {
	etcdStorage, err := etcd.NewEtcdStorage(strings.Split(etcdEndpoints, ","))
	if err != nil {
		return fmt.Errorf("failed to create etcd storage: %w", err)
	}

	configSource := &Rigel{
		Client:        rigel.New(etcdStorage),
		SchemaName:    schemaName,
		SchemaVersion: schemaVersion,
		ConfigName:    configName,
	}

	if err := Load(configSource, appConfig); err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	return nil
}
