package export

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

// wireMessage is the JSON frame streamed to a connected printer for every
// write call: a minimal tagged envelope a printer-side client can decode
// without needing the full GCode dialect.
type wireMessage struct {
	Type          string          `json:"type"`
	LayerIndex    int             `json:"layer_index,omitempty"`
	Z             int64           `json:"z,omitempty"`
	Point         *geom.Point3    `json:"point,omitempty"`
	Speed         float64         `json:"speed,omitempty"`
	MM3PerMM      float64         `json:"mm3_per_mm,omitempty"`
	LineWidth     float64         `json:"line_width,omitempty"`
	LineThickness float64         `json:"line_thickness,omitempty"`
	Feature       plan.FeatureType `json:"feature,omitempty"`
}

// CommunicationExporter streams writes to a connected printer over a
// websocket connection, one JSON frame per call. conn.WriteJSON is not
// safe for concurrent use, so every send takes mu (mirrors the teacher's
// WSClient.send guard).
type CommunicationExporter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewCommunicationExporter wraps an already-dialed websocket connection.
func NewCommunicationExporter(conn *websocket.Conn) *CommunicationExporter {
	return &CommunicationExporter{conn: conn}
}

func (c *CommunicationExporter) send(v wireMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("communication exporter: %w", err)
	}
	return nil
}

func (c *CommunicationExporter) WriteLayerStart(layerIndex int, z int64, start geom.Point3) error {
	return c.send(wireMessage{Type: "layer_start", LayerIndex: layerIndex, Z: z, Point: &start})
}

func (c *CommunicationExporter) WriteExtrusion(point geom.Point3, speed, mm3PerMM, lineWidth, lineThickness float64, feature plan.FeatureType) error {
	return c.send(wireMessage{
		Type: "extrusion", Point: &point, Speed: speed, MM3PerMM: mm3PerMM,
		LineWidth: lineWidth, LineThickness: lineThickness, Feature: feature,
	})
}

func (c *CommunicationExporter) WriteTravel(point geom.Point3, speed float64, feature plan.FeatureType) error {
	return c.send(wireMessage{Type: "travel", Point: &point, Speed: speed, Feature: feature})
}

func (c *CommunicationExporter) WriteLayerEnd(layerIndex int, layerThickness int64) error {
	return c.send(wireMessage{Type: "layer_end", LayerIndex: layerIndex, Z: layerThickness})
}
