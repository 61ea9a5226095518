package main

import (
	"boscoin.io/voteweigher/cmd/voteweigher/cmd"
)

func main() {
	cmd.Execute()
}
