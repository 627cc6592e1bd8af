package settings

import (
	"github.com/memmaker/boomheadshot/game"
	"github.com/spf13/pflag"
)

// RegisterFlags adds one flag per option. Only flags that are set on the command line override the settings source.
func RegisterFlags(fs *pflag.FlagSet) {
	for _, option := range game.NumericOptions() {
		if option.Integer {
			fs.Int(option.Key, int(option.Default), option.Comment)
			continue
		}
		fs.Float64(option.Key, option.Default, option.Comment)
	}
	fs.Bool(game.KeyEnableHeadshotEffects, false, "Apply status effects to targets hit in the head")
	fs.StringSlice(game.KeyHeadshotEffects, FormatEffects(game.DefaultHeadshotEffects()), "Status effects applied on headshots as id:duration")
	fs.StringSlice(game.KeyHelmetProtections, FormatProtections(game.DefaultHelmetProtections(), game.DefaultHelmetOrder), "Helmet protection values as id:fraction")
	fs.Bool(game.KeyDebug, false, "Log headshot detection details")
}
