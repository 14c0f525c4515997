// Command campus-router builds campus walkway graphs and serves routes on them.
package main

func main() {
	Execute()
}
