// Package snapshot reads and writes recorded damage events stored as NBT,
// the same format the game uses for entity data.
package snapshot

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

/*
	TAG_Compound("scenario", {
	    "Name": TAG_String(),
	    "Events": TAG_List([
	        TAG_Compound({
	            "World": TAG_String(),
	            "Damage": TAG_Double(),
	            "Target": <Entity>,
	            "Attacker": <Entity>   // empty compound when there is no attacker
	        })
	    ])
	})

	Entity:
	TAG_Compound({
	    "id": TAG_String(),
	    "CustomName": TAG_String(),
	    "Pos": TAG_List([TAG_Double() x3]),
	    "Motion": TAG_List([TAG_Double() x3]),
	    "Rotation": TAG_List([TAG_Float() yaw, TAG_Float() pitch]),
	    "ArmorItems": TAG_List([TAG_Compound({"id": TAG_String(), "Count": TAG_Byte()}) x4]),  // feet, legs, chest, head
	    "Pose": TAG_String()   // standing, crouching or swimming, empty means standing
	})
*/

const rootTagName = "scenario"

// HeadSlot is the index of the helmet within ArmorItems.
const HeadSlot = 3

type Item struct {
	ID    string `nbt:"id"`
	Count byte   `nbt:"Count"`
}

type Entity struct {
	ID         string    `nbt:"id"`
	CustomName string    `nbt:"CustomName"`
	Pos        []float64 `nbt:"Pos"`
	Motion     []float64 `nbt:"Motion"`
	Rotation   []float32 `nbt:"Rotation"`
	ArmorItems []Item    `nbt:"ArmorItems"`
	Pose       string    `nbt:"Pose"`
}

func (e Entity) Present() bool {
	return e.ID != ""
}

func (e Entity) Position() mgl64.Vec3 {
	return toVec3(e.Pos)
}

func (e Entity) Velocity() mgl64.Vec3 {
	return toVec3(e.Motion)
}

func (e Entity) Yaw() float64 {
	if len(e.Rotation) < 1 {
		return 0
	}
	return float64(e.Rotation[0])
}

func (e Entity) Pitch() float64 {
	if len(e.Rotation) < 2 {
		return 0
	}
	return float64(e.Rotation[1])
}

// HelmetID is the item id in the head slot, empty if nothing is worn.
func (e Entity) HelmetID() string {
	if len(e.ArmorItems) <= HeadSlot {
		return ""
	}
	return e.ArmorItems[HeadSlot].ID
}

// Name prefers the custom name and falls back to the entity id.
func (e Entity) Name() string {
	if e.CustomName != "" {
		return e.CustomName
	}
	return e.ID
}

func toVec3(values []float64) mgl64.Vec3 {
	var v mgl64.Vec3
	copy(v[:], values)
	return v
}

type DamageRecord struct {
	World    string  `nbt:"World"`
	Damage   float64 `nbt:"Damage"`
	Target   Entity  `nbt:"Target"`
	Attacker Entity  `nbt:"Attacker"`
}

type Scenario struct {
	Name   string         `nbt:"Name"`
	Events []DamageRecord `nbt:"Events"`
}

// Decode reads a scenario from raw or gzip compressed NBT.
func Decode(r io.Reader) (*Scenario, error) {
	buffered := bufio.NewReader(r)
	magic, err := buffered.Peek(2)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario header")
	}
	var source io.Reader = buffered
	if magic[0] == 0x1f && magic[1] == 0x8b {
		gzipReader, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip stream")
		}
		defer gzipReader.Close()
		source = gzipReader
	}
	var scenario Scenario
	if _, err := nbt.NewDecoder(source).Decode(&scenario); err != nil {
		return nil, errors.Wrap(err, "decode scenario")
	}
	return &scenario, nil
}

func Encode(w io.Writer, scenario *Scenario) error {
	if err := nbt.NewEncoder(w).Encode(scenario, rootTagName); err != nil {
		return errors.Wrap(err, "encode scenario")
	}
	return nil
}

func LoadFile(filename string) (*Scenario, error) {
	fileReader, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open scenario %s", filename)
	}
	defer fileReader.Close()
	return Decode(fileReader)
}

// SaveFile writes the scenario gzip compressed, like the game's own .dat files.
func SaveFile(filename string, scenario *Scenario) error {
	fileWriter, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create scenario %s", filename)
	}
	gzipWriter := gzip.NewWriter(fileWriter)
	if err := Encode(gzipWriter, scenario); err != nil {
		fileWriter.Close()
		return err
	}
	if err := gzipWriter.Close(); err != nil {
		fileWriter.Close()
		return errors.Wrap(err, "flush gzip stream")
	}
	return fileWriter.Close()
}
