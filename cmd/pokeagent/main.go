// Command pokeagent serves the Pokémon trainer tools to an agent runtime.
package main

import (
	_ "time/tzdata"
)

func main() {
	Execute()
}
