package ui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const bannerWord = "SALARYSTATS"

// ColorizeText fades the text between two random colours
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	endColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := strings.Split(text, "")
	half := len(chars) / 2
	if half == 0 {
		half = 1
	}

	var b strings.Builder
	for i, ch := range chars {
		b.WriteString(startColor.Fade(0, float32(len(chars)), float32(i%half), endColor).Sprint(ch))
	}
	return b.String()
}

// PrintBanner writes the application banner to w unless silenced
func PrintBanner(w io.Writer, silence bool) {
	if silence {
		return
	}
	banner, err := pterm.DefaultBigText.WithLetters(putils.LettersFromString(bannerWord)).Srender()
	if err != nil {
		banner = bannerWord
	}
	// big text carries its own escape codes, which the fade would split apart
	fmt.Fprintln(w, ColorizeText(pterm.RemoveColorFromString(banner)))
}
