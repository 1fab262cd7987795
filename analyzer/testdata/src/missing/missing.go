// Copyright Acme Corp

package missing // want `Missing MPL license header in source file\.`

func Missing() {}
