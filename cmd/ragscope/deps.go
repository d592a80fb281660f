package main

import (
	"github.com/prathamdarmwal/ragscope/internal/cache"
	"github.com/prathamdarmwal/ragscope/internal/config"
	"github.com/prathamdarmwal/ragscope/internal/store"
)

var (
	loadConfig    = config.Load
	defaultConfig = config.Default
	newResources  = cache.New
	openStore     = store.Open
)
