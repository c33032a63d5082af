// Command perch organizes media libraries and generates XMP sidecars.
package main
