// Package packing partitions cart contents into carrier-compliant packages.
// Three interchangeable strategies mirror the merchant-facing packing modes:
// one bounding box split by weight/girth, a cubic-volume approximation, and
// one package per unit quantity.
package packing

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"fedex-shipping-service/models"
	"fedex-shipping-service/units"
)

// Carrier package ceilings, in carrier units (pounds, inches).
const (
	// MaxPackageWeight is the heaviest single package FedEx accepts.
	MaxPackageWeight = 150
	// MaxGirthLength is the hard oversize cutoff for girth+length.
	MaxGirthLength = 165
	// DefaultPackageVolume is the dimensional-weight threshold (3 cubic
	// feet) used as the per-package volume hint when none is configured.
	DefaultPackageVolume = 5184
)

// oversizeSplitGirth is the girth+length threshold the ByDimensions split
// divides by. It is deliberately narrower than the 165 in cutoff.
const oversizeSplitGirth = 108

// Strategy selects how cart contents are partitioned into packages.
type Strategy int

const (
	ByDimensions Strategy = iota
	ByVolume
	ByOneItemPerPackage
)

// ParseStrategy maps a configuration keyword to a Strategy, defaulting to
// ByDimensions.
func ParseStrategy(s string) Strategy {
	switch s {
	case "volume":
		return ByVolume
	case "one_item_per_package":
		return ByOneItemPerPackage
	default:
		return ByDimensions
	}
}

func (s Strategy) String() string {
	switch s {
	case ByVolume:
		return "volume"
	case ByOneItemPerPackage:
		return "one_item_per_package"
	default:
		return "dimensions"
	}
}

// Options carries the request-scoped inputs of a packing computation.
type Options struct {
	Strategy      Strategy
	WeightUnit    units.Unit // store-native unit of PackageItem.Weight
	DimensionUnit units.Unit // store-native unit of PackageItem dimensions
	SubTotal      float64    // cart subtotal in the shipment currency, used as insured value
	Currency      string
	PackageVolume int // cubic inches, ByVolume per-package hint
	Floor         int // minimum whole units per measurement, default 1
}

func (o Options) floor() int {
	if o.Floor > 0 {
		return o.Floor
	}
	return units.DefaultFloor
}

// Pack partitions the cart items into packages honoring the carrier's weight
// and size ceilings. Deterministic, no I/O; an error means the configuration
// cannot produce a valid package set, never a partial result.
func Pack(items []models.PackageItem, opts Options) ([]models.Package, error) {
	if len(items) == 0 {
		return nil, errors.New("no items to pack")
	}

	switch opts.Strategy {
	case ByVolume:
		return packByVolume(items, opts)
	case ByOneItemPerPackage:
		return packOneItemPerPackage(items, opts)
	default:
		return packByDimensions(items, opts)
	}
}

// packByDimensions treats the whole cart as a single bounding box and splits
// it into several even packages when it exceeds the weight or girth ceiling.
func packByDimensions(items []models.PackageItem, opts Options) ([]models.Package, error) {
	width, length, height, err := aggregateDimensions(items, opts)
	if err != nil {
		return nil, err
	}
	weight, err := totalWeight(items, opts)
	if err != nil {
		return nil, err
	}

	if !tooHeavy(float64(weight)) && !tooLarge(float64(length), float64(height), float64(width)) {
		pkg := newPackage(float64(width), float64(length), float64(height), float64(weight), opts.SubTotal, 1, opts.Currency)
		return []models.Package{pkg}, nil
	}

	totalByWeight := 1
	if tooHeavy(float64(weight)) {
		totalByWeight = int(math.Ceil(float64(weight) / MaxPackageWeight))
	}
	totalByGirth := 1
	if tooLarge(float64(length), float64(height), float64(width)) {
		totalByGirth = int(math.Ceil(girthAndLength(float64(length), float64(height), float64(width)) / oversizeSplitGirth))
	}
	total := totalByGirth
	if totalByWeight > total {
		total = totalByWeight
	}
	if total < 1 {
		total = 1
	}

	// Dividing dimensions by the package count does not model a physical
	// repack; it matches the carrier's declared dimensional weight per
	// package.
	f := float64(opts.floor())
	w := math.Max(float64(width)/float64(total), f)
	l := math.Max(float64(length)/float64(total), f)
	h := math.Max(float64(height)/float64(total), f)
	wt := math.Max(float64(weight)/float64(total), f)
	value := opts.SubTotal / float64(total)

	packages := make([]models.Package, 0, total)
	for i := 1; i <= total; i++ {
		packages = append(packages, newPackage(w, l, h, wt, value, i, opts.Currency))
	}
	return packages, nil
}

// packByVolume approximates the cart as N identical cubes sized from the
// configured per-package volume. A single one-unit cart keeps the item's own
// dimensions instead of the cube.
func packByVolume(items []models.PackageItem, opts Options) ([]models.Package, error) {
	floor := opts.floor()
	totalByDims := 1
	var width, length, height int

	if len(items) == 1 && items[0].Quantity == 1 {
		var err error
		width, length, height, err = itemDimensions(items[0], opts)
		if err != nil {
			return nil, err
		}
	} else {
		totalVolume := 0
		for _, item := range items {
			w, l, h, err := itemDimensions(item, opts)
			if err != nil {
				return nil, err
			}
			totalVolume += item.Quantity * w * l * h
		}

		dimension := 0
		if totalVolume > 0 {
			packageVolume := opts.PackageVolume
			if packageVolume <= 0 {
				packageVolume = DefaultPackageVolume
			}

			dimension = int(math.Floor(math.Cbrt(float64(packageVolume))))
			if tooLarge(float64(dimension), float64(dimension), float64(dimension)) {
				return nil, fmt.Errorf("configured package volume %d yields an oversize package", packageVolume)
			}

			// Recompute the volume for the whole cube edge actually used.
			packageVolume = dimension * dimension * dimension
			totalByDims = int(math.Ceil(float64(totalVolume) / float64(packageVolume)))
		}

		width, length, height = dimension, dimension, dimension
	}

	if width < floor {
		width = floor
	}
	if length < floor {
		length = floor
	}
	if height < floor {
		height = floor
	}

	weight, err := totalWeight(items, opts)
	if err != nil {
		return nil, err
	}
	totalByWeight := 1
	if tooHeavy(float64(weight)) {
		totalByWeight = int(math.Ceil(float64(weight) / MaxPackageWeight))
	}

	total := totalByDims
	if totalByWeight > total {
		total = totalByWeight
	}
	if total < 1 {
		total = 1
	}

	// The cube models a fixed per-package mold, so dimensions are not
	// divided across packages; only weight and value are.
	weightPerPackage := math.Max(float64(weight)/float64(total), float64(floor))
	valuePerPackage := opts.SubTotal / float64(total)

	packages := make([]models.Package, 0, total)
	for i := 1; i <= total; i++ {
		packages = append(packages, newPackage(float64(width), float64(length), float64(height), weightPerPackage, valuePerPackage, i, opts.Currency))
	}
	return packages, nil
}

// packOneItemPerPackage emits one package per unit quantity, each sized and
// insured as that single unit.
func packOneItemPerPackage(items []models.PackageItem, opts Options) ([]models.Package, error) {
	floor := opts.floor()
	var packages []models.Package

	seq := 1
	for _, item := range items {
		w, l, h, err := itemDimensions(item, opts)
		if err != nil {
			return nil, err
		}
		wt, err := units.NormalizeWeight(item.Weight, opts.WeightUnit, floor)
		if err != nil {
			return nil, err
		}

		for q := 0; q < item.Quantity; q++ {
			packages = append(packages, newPackage(float64(w), float64(l), float64(h), float64(wt), item.UnitPrice, seq, opts.Currency))
			seq++
		}
	}
	return packages, nil
}

// aggregateDimensions models the cart's bounding box: the widest and longest
// footprint with all units stacked in height.
func aggregateDimensions(items []models.PackageItem, opts Options) (width, length, height int, err error) {
	for _, item := range items {
		w, l, h, err := itemDimensions(item, opts)
		if err != nil {
			return 0, 0, 0, err
		}
		if w > width {
			width = w
		}
		if l > length {
			length = l
		}
		height += item.Quantity * h
	}
	return width, length, height, nil
}

func itemDimensions(item models.PackageItem, opts Options) (width, length, height int, err error) {
	floor := opts.floor()
	if width, err = units.NormalizeDimension(item.Width, opts.DimensionUnit, floor); err != nil {
		return
	}
	if length, err = units.NormalizeDimension(item.Length, opts.DimensionUnit, floor); err != nil {
		return
	}
	height, err = units.NormalizeDimension(item.Height, opts.DimensionUnit, floor)
	return
}

func totalWeight(items []models.PackageItem, opts Options) (int, error) {
	var sum float64
	for _, item := range items {
		sum += float64(item.Quantity) * item.Weight
	}
	return units.NormalizeWeight(sum, opts.WeightUnit, opts.floor())
}

func tooHeavy(weight float64) bool {
	return weight > MaxPackageWeight
}

func tooLarge(length, height, width float64) bool {
	return girthAndLength(length, height, width) > MaxGirthLength
}

// girthAndLength is the carrier's oversize measure: 2*height + 2*width + length.
func girthAndLength(length, height, width float64) float64 {
	return height*2 + width*2 + length
}

func newPackage(width, length, height, weight, insuredValue float64, sequence int, currency string) models.Package {
	return models.Package{
		SequenceNumber: strconv.Itoa(sequence),
		Weight:         weight,
		Width:          width,
		Length:         length,
		Height:         height,
		InsuredValue:   insuredValue,
		Currency:       currency,
	}
}
