package settings

import (
	"encoding/json"

	"github.com/memmaker/boomheadshot/game"
	"github.com/pkg/errors"
	"github.com/quasilyte/gdata"
)

// ItemKey is the data store item holding the settings blob.
const ItemKey = "headshot_settings"

// ItemStore is a per-user key/value store, implemented by *gdata.Manager.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// OpenItemStore opens the per-user data directory of appName.
func OpenItemStore(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open data store for %s", appName)
	}
	return m, nil
}

// Document is the serialized form of a config snapshot, using the option names as keys.
type Document struct {
	HeadshotMultiplier    float64  `json:"headshotMultiplier"`
	EnableHeadshotEffects bool     `json:"enableHeadshotEffects"`
	HeadshotEffects       []string `json:"headshotEffects"`
	RayTraceDistance      float64  `json:"rayTraceDistance"`
	ArrowBacktrack        float64  `json:"arrowBacktrack"`
	MaxHeadWidth          float64  `json:"maxHeadWidth"`
	HeadHeightRatio       float64  `json:"headHeightRatio"`
	HeadHeightBottomRatio float64  `json:"headHeightBottomRatio"`
	HeadHeightTopRatio    float64  `json:"headHeightTopRatio"`
	ParticleCount         int      `json:"particleCount"`
	ParticleSpread        float64  `json:"particleSpread"`
	ParticleSpeed         float64  `json:"particleSpeed"`
	HelmetProtections     []string `json:"helmetProtections"`
	Debug                 bool     `json:"debug"`
}

func DocumentFrom(cfg *game.HeadshotConfig) Document {
	return Document{
		HeadshotMultiplier:    cfg.HeadshotMultiplier,
		EnableHeadshotEffects: cfg.EnableHeadshotEffects,
		HeadshotEffects:       FormatEffects(cfg.HeadshotEffects),
		RayTraceDistance:      cfg.RayTraceDistance,
		ArrowBacktrack:        cfg.ArrowBacktrack,
		MaxHeadWidth:          cfg.MaxHeadWidth,
		HeadHeightRatio:       cfg.HeadHeightRatio,
		HeadHeightBottomRatio: cfg.HeadHeightBottomRatio,
		HeadHeightTopRatio:    cfg.HeadHeightTopRatio,
		ParticleCount:         cfg.ParticleCount,
		ParticleSpread:        cfg.ParticleSpread,
		ParticleSpeed:         cfg.ParticleSpeed,
		HelmetProtections:     FormatProtections(cfg.HelmetProtections, game.DefaultHelmetOrder),
		Debug:                 cfg.Debug,
	}
}

// SaveToStore writes cfg so that NewStoreLoader reads it back.
func SaveToStore(items ItemStore, cfg *game.HeadshotConfig) error {
	data, err := json.MarshalIndent(DocumentFrom(cfg), "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialize settings")
	}
	if err := items.SaveItem(ItemKey, data); err != nil {
		return errors.Wrapf(err, "save item %s", ItemKey)
	}
	return nil
}
