// Package main provides a child that prints GBK-encoded text for tests.
package main

import "os"

// "你好, GBK!" encoded as GBK.
var greeting = []byte{0xC4, 0xE3, 0xBA, 0xC3, ',', ' ', 'G', 'B', 'K', '!', '\n'}

func main() {
	if _, err := os.Stdout.Write(greeting); err != nil {
		os.Exit(1)
	}
}
