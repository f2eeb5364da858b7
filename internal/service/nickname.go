package service

import (
	"fmt"
	"math/rand/v2"
)

var (
	nicknameAdjectives = []string{
		"Brave", "Calm", "Clever", "Curious", "Daring", "Eager", "Gentle", "Happy",
		"Jolly", "Kind", "Lucky", "Mighty", "Nimble", "Proud", "Quick", "Quiet",
		"Shy", "Silly", "Swift", "Witty",
	}
	nicknameAnimals = []string{
		"Badger", "Bear", "Beaver", "Crane", "Dolphin", "Eagle", "Falcon", "Fox",
		"Hedgehog", "Koala", "Lynx", "Otter", "Owl", "Panda", "Penguin", "Rabbit",
		"Raccoon", "Tiger", "Turtle", "Wolf",
	}
)

// randomNicknameGenerator builds nicknames of the form
// <Adjective><Animal><0-9999>, e.g. "SwiftOtter4821".
type randomNicknameGenerator struct {
	intN func(n int) int
}

// NewNicknameGenerator returns a [NicknameGenerator] backed by math/rand/v2.
func NewNicknameGenerator() NicknameGenerator {
	return &randomNicknameGenerator{intN: rand.IntN}
}

// Generate implements [NicknameGenerator].
func (g *randomNicknameGenerator) Generate() string {
	return fmt.Sprintf("%s%s%d",
		nicknameAdjectives[g.intN(len(nicknameAdjectives))],
		nicknameAnimals[g.intN(len(nicknameAnimals))],
		g.intN(10000),
	)
}
