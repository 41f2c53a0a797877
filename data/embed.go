package data

import _ "embed"

//go:embed help.en.template
var HelpTemplate string

//go:embed round.en.template
var RoundTemplate string

//go:embed victory.en.template
var VictoryTemplate string

//go:embed defeat.en.template
var DefeatTemplate string

//go:embed stats.en.template
var StatsTemplate string

//go:embed taunts.en.json
var TauntsJSON []byte
