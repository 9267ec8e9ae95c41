package svr

var (
	Debug = false // set to true for verbose debug output
)
