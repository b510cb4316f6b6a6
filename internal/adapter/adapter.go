package adapter

import (
	"fmt"

	"NightSync/internal/config"
	"NightSync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// SourceRegistry 来源适配器实例注册表：启动时按配置从工厂函数创建实例
type SourceRegistry struct {
	cfg    *config.Config
	logger *logrus.Logger
	// 来源名称→适配器实例的映射
	adapters map[string]interfaces.SourceAdapter
}

// NewSourceRegistry 创建实例注册表并初始化配置中声明的全部来源
func NewSourceRegistry(cfg *config.Config, logger *logrus.Logger) *SourceRegistry {
	r := &SourceRegistry{
		cfg:      cfg,
		logger:   logger,
		adapters: make(map[string]interfaces.SourceAdapter),
	}
	r.initAdaptersFromFactories()
	return r
}

// initAdaptersFromFactories 从工厂函数注册表初始化适配器实例
func (r *SourceRegistry) initAdaptersFromFactories() {
	r.logger.WithField("factory_sources", ListFactories()).Info("adapter包中已注册的工厂函数")

	for sourceName := range r.cfg.Sources {
		sourceCfg := r.cfg.Sources[sourceName]

		factory, ok := GetFactory(sourceName)
		if !ok {
			r.logger.WithField("source", sourceName).Error("未找到对应的工厂函数（init未注册？）")
			continue
		}

		adapterIns := factory(&sourceCfg, r.logger)
		if adapterIns == nil {
			r.logger.WithField("source", sourceName).Error("工厂函数返回nil适配器实例")
			continue
		}
		if adapterIns.GetName() != sourceName {
			r.logger.WithFields(logrus.Fields{
				"config_source":  sourceName,
				"adapter_source": adapterIns.GetName(),
			}).Error("适配器来源名称与配置不匹配")
			continue
		}

		r.adapters[sourceName] = adapterIns
		r.logger.WithField("source", sourceName).Info("适配器实例初始化成功并加入注册表")
	}
}

// ListRegisteredSources 获取所有已初始化的来源名称列表
func (r *SourceRegistry) ListRegisteredSources() []string {
	var sources []string
	for s := range r.adapters {
		sources = append(sources, s)
	}
	return sources
}

// GetAdapter 获取适配器实例
func (r *SourceRegistry) GetAdapter(source string) (interfaces.SourceAdapter, error) {
	adapterIns, ok := r.adapters[source]
	if !ok {
		return nil, fmt.Errorf("来源%s未初始化适配器实例（已初始化：%v）", source, r.ListRegisteredSources())
	}
	return adapterIns, nil
}
