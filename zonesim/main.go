// Command zonesim simulates PID-controlled thermal zones.
package main

import "github.com/sarchlab/zonesim/zonesim/cmd"

func main() {
	cmd.Execute()
}
