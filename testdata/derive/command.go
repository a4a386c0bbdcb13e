package command

//macrokit:derive Builder, CustomDebug
type Command struct {
	Executable string
	Args       []string `builder:"each=arg"`
	Env        []string `builder:"each=env"`
	CurrentDir *string
	Mode       uint32 `debug:"0b%08b"`
}
