package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"battery-dispatch/internal/api/models"
	"battery-dispatch/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BatteryHandler handles battery-related requests
type BatteryHandler struct {
	batteryDir string
	log        zerolog.Logger
}

// NewBatteryHandler creates a new battery handler reading presets from dir
func NewBatteryHandler(dir string, log zerolog.Logger) *BatteryHandler {
	// Convert to absolute path for reliability
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	log.Info().Str("dir", dir).Msg("using battery directory")
	return &BatteryHandler{batteryDir: dir, log: log}
}

// BatteryDir returns the resolved preset directory
func (h *BatteryHandler) BatteryDir() string {
	return h.batteryDir
}

// ListBatteries handles GET /api/v1/batteries
func (h *BatteryHandler) ListBatteries(c *gin.Context) {
	batteries := []models.BatteryInfo{}

	entries, err := os.ReadDir(h.batteryDir)
	if err != nil {
		h.log.Warn().Err(err).Str("dir", h.batteryDir).Msg("failed to read battery directory")
		c.JSON(http.StatusOK, gin.H{"batteries": batteries})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(h.batteryDir, entry.Name())
		info, err := h.loadBatteryInfo(path, entry.Name())
		if err != nil {
			h.log.Warn().Err(err).Str("path", path).Msg("skipping invalid battery file")
			continue
		}
		batteries = append(batteries, *info)
	}
	sort.Slice(batteries, func(i, j int) bool { return batteries[i].ID < batteries[j].ID })

	h.log.Debug().Int("count", len(batteries)).Msg("listed batteries")
	c.JSON(http.StatusOK, gin.H{"batteries": batteries})
}

func (h *BatteryHandler) loadBatteryInfo(path, filename string) (*models.BatteryInfo, error) {
	battery, err := config.LoadBatteryFile(path)
	if err != nil {
		return nil, err
	}

	// The ID is the filename without extension; it is what battery_file takes.
	id := strings.TrimSuffix(filename, ".yaml")
	name := battery.Name
	if name == "" {
		name = id
	}

	m := battery.ToModel()
	return &models.BatteryInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.BatterySpecs{
			CapacityKWh:         m.CapacityKWh,
			MaxChargePowerKW:    m.MaxChargePowerKW,
			MaxDischargePowerKW: m.MaxDischargePowerKW,
		},
	}, nil
}
