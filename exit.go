package rrrgen

import "os"

func defaultExit(code int) { os.Exit(code) }
