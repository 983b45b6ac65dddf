package nats

import (
	"github.com/zhulik/pal"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

func Provide() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide[core.KeyValueClient](&NATS{}),
	)
}
