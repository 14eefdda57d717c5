// Package blockdata reads the game's BlocksData.xml table and makes block
// metadata searchable by id and name. The table is an independent, read-only
// collaborator of the chunk decoder: it shares nothing with the save format
// beyond the numeric block id.
package blockdata

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
)

// ErrBadTable reports a BlocksData.xml document that is not a flat list of
// <Block /> elements.
var ErrBadTable = errors.New("blockdata: root element may only contain flat <Block /> tags")

// ToolPower groups the strengths of a block when used as a tool.
type ToolPower struct {
	Quarry    float64
	Shovel    float64
	Hack      float64
	Weapon    float64
	Longevity float64
}

// Block is one entry of the BlocksData table.
type Block struct {
	ID               int
	Name             string
	Power            ToolPower
	Resilience       float64
	BlocksFluid      bool
	Aimable          bool
	LightAttenuation int
	LightEmission    int
	MaxStacking      int
	Nutrition        float64
}

// Table holds the parsed block metadata, indexed by block id.
type Table struct {
	byID  map[int]Block
	order []Block
}

type xmlBlock struct {
	XMLName              xml.Name
	Nested               []struct{ XMLName xml.Name } `xml:",any"`
	BlockID              int                          `xml:"BlockId,attr"`
	Name                 string                       `xml:"Name,attr"`
	QuarryPower          float64                      `xml:"QuarryPower,attr"`
	ShovelPower          float64                      `xml:"ShovelPower,attr"`
	HackPower            float64                      `xml:"HackPower,attr"`
	WeaponPower          float64                      `xml:"WeaponPower,attr"`
	AverageToolLongevity float64                      `xml:"AverageToolLongevity,attr"`
	DigResilience        float64                      `xml:"DigResilience,attr"`
	IsFluidBlocker       bool                         `xml:"IsFluidBlocker,attr"`
	IsAimable            bool                         `xml:"IsAimable,attr"`
	LightAttenuation     int                          `xml:"LightAttenuation,attr"`
	EmittedLightAmount   int                          `xml:"EmittedLightAmount,attr"`
	MaxStacking          int                          `xml:"MaxStacking,attr"`
	NutritionalValue     float64                      `xml:"NutritionalValue,attr"`
}

// Parse reads a BlocksData.xml document.
func Parse(r io.Reader) (*Table, error) {
	var document struct {
		Blocks []xmlBlock `xml:",any"`
	}
	if err := xml.NewDecoder(r).Decode(&document); err != nil {
		return nil, err
	}

	table := &Table{byID: make(map[int]Block, len(document.Blocks))}
	for _, raw := range document.Blocks {
		if raw.XMLName.Local != "Block" || len(raw.Nested) > 0 {
			return nil, ErrBadTable
		}
		block := Block{
			ID:   raw.BlockID,
			Name: raw.Name,
			Power: ToolPower{
				Quarry:    raw.QuarryPower,
				Shovel:    raw.ShovelPower,
				Hack:      raw.HackPower,
				Weapon:    raw.WeaponPower,
				Longevity: raw.AverageToolLongevity,
			},
			Resilience:       raw.DigResilience,
			BlocksFluid:      raw.IsFluidBlocker,
			Aimable:          raw.IsAimable,
			LightAttenuation: raw.LightAttenuation,
			LightEmission:    raw.EmittedLightAmount,
			MaxStacking:      raw.MaxStacking,
			Nutrition:        raw.NutritionalValue,
		}
		table.byID[block.ID] = block
		table.order = append(table.order, block)
	}
	return table, nil
}

// Load parses the BlocksData.xml file at path.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Len reports the number of blocks in the table.
func (t *Table) Len() int {
	return len(t.order)
}

// ByID looks a block up by its numeric id.
func (t *Table) ByID(id int) (Block, bool) {
	block, ok := t.byID[id]
	return block, ok
}

// Search returns the blocks whose name contains the query,
// case-insensitively, in file order.
func (t *Table) Search(query string) []Block {
	query = strings.ToLower(query)
	var matched []Block
	for _, block := range t.order {
		if strings.Contains(strings.ToLower(block.Name), query) {
			matched = append(matched, block)
		}
	}
	return matched
}
