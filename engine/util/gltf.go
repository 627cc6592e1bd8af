package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadModelExtents returns the bounding box over every mesh primitive's POSITION data.
// Node transforms are not applied, models are expected in their rest pose at unit scale.
func LoadModelExtents(filename string) (AABB, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return AABB{}, errors.Wrapf(err, "open model %s", filename)
	}
	return documentExtents(doc)
}

func documentExtents(doc *gltf.Document) (AABB, error) {
	var allPositions [][3]float32
	for meshIndex, mesh := range doc.Meshes {
		for _, subMesh := range mesh.Primitives {
			indexOfPositions, ok := subMesh.Attributes["POSITION"]
			if !ok || int(indexOfPositions) >= len(doc.Accessors) {
				continue
			}
			var vertBuffer [][3]float32
			vertBuffer, err := modeler.ReadPosition(doc, doc.Accessors[indexOfPositions], vertBuffer)
			if err != nil {
				return AABB{}, errors.Wrapf(err, "read positions of mesh %d", meshIndex)
			}
			allPositions = append(allPositions, vertBuffer...)
		}
	}
	box, ok := boundsOfPositions(allPositions)
	if !ok {
		return AABB{}, errors.New("model contains no vertex positions")
	}
	return box, nil
}

func boundsOfPositions(positions [][3]float32) (AABB, bool) {
	if len(positions) == 0 {
		return AABB{}, false
	}
	min := mgl64.Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
	max := mgl64.Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for _, p := range positions {
		for axis := 0; axis < 3; axis++ {
			v := float64(p[axis])
			min[axis] = math.Min(min[axis], v)
			max[axis] = math.Max(max[axis], v)
		}
	}
	return NewAABBFromCorners(min, max), true
}
