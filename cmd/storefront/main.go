// Command storefront serves the storefront shell.
package main

func main() {
	Execute()
}
