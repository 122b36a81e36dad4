/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package main

import "github.com/substantialcattle5/dupescan/cmd"

func main() {
	cmd.Execute()
}
