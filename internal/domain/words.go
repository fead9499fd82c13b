package domain

import "math/rand"

// DefaultWords is the built-in secret word pool, used when the config does not
// supply its own list. Words are everyday nouns that give non-impostors room
// to describe without giving the word away.
var DefaultWords = []string{
	"airport", "anchor", "balloon", "beehive", "bicycle", "campfire",
	"carousel", "castle", "circus", "compass", "desert", "elevator",
	"firework", "glacier", "hammock", "harbor", "iceberg", "jungle",
	"lantern", "library", "lighthouse", "meadow", "museum", "orchard",
	"parachute", "pillow", "pyramid", "rainbow", "sailboat", "sandcastle",
	"scarecrow", "snowman", "submarine", "telescope", "theater", "tractor",
	"treehouse", "volcano", "waterfall", "windmill",
}

// RandomWord draws one word from the pool, falling back to the default pool
// when the given one is empty.
func RandomWord(pool []string) string {
	if len(pool) == 0 {
		pool = DefaultWords
	}
	return pool[rand.Intn(len(pool))]
}
