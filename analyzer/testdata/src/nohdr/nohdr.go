package nohdr // want `Missing MPL license header in source file\.`

func NoHeader() {}
