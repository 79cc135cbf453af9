package channel

import "os"

var Quit = make(chan os.Signal, 1)
