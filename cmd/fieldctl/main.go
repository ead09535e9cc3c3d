// Command fieldctl reads and patches fixed binary layouts in files.
package main

func main() {
	execute()
}
