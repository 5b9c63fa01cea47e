package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleCatalog creates a sample catalogue seed file for local
// development. The output matches what the seed importer expects: gzipped
// JSON lines, one product per line.
func main() {
	dataDir := "data/catalog"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	records := []string{
		`{"kind":"game","name":"Galaxy Racer","description":"Anti-gravity racing across twelve star systems.","price":"19.99","releaseDate":"2024-03-01","genre":"Racing","publisher":"Nova Interactive","rating":"E","players":"1-4","stockQuantity":40}`,
		`{"kind":"game","name":"Dungeon of Echoes","description":"Roguelike dungeon crawler with a sound-based combat system.","price":"24.99","releaseDate":"2023-10-13","genre":"Roguelike","publisher":"Whisperworks","rating":"T","players":"1","stockQuantity":25}`,
		`{"kind":"game","name":"Harvest Lane","description":"Cozy farming sim set in a seaside village.","price":"14.99","releaseDate":"2022-06-20","genre":"Simulation","publisher":"Quiet Fox Games","rating":"E","players":"1-2","stockQuantity":60}`,
		`{"kind":"game","name":"Ironclad Tactics VII","description":"Turn-based mech warfare on destructible terrain.","price":"49.99","releaseDate":"2025-01-30","genre":"Strategy","publisher":"Foundry Digital","rating":"T","players":"1-8","stockQuantity":15}`,
		`{"kind":"hardware","name":"Arcade Stick Pro","description":"Eight-button arcade stick with swappable gates.","price":"89.00","manufacturer":"Hayashi Peripherals","sku":"HP-AS-200","upc":"810004321007","stockQuantity":12}`,
		`{"kind":"hardware","name":"Nimbus Wireless Pad","description":"Low-latency wireless controller, 40 hour battery.","price":"59.00","manufacturer":"Nimbus Labs","sku":"NL-WP-01","upc":"810004321014","stockQuantity":30}`,
		`{"kind":"hardware","name":"Pixel Dock Charging Stand","description":"Dual controller charging stand with status LEDs.","price":"24.50","manufacturer":"Nimbus Labs","sku":"NL-CD-02","upc":"810004321021","stockQuantity":50}`,
	}

	filePath := filepath.Join(dataDir, "catalog.jsonl.gz")
	if err := createSeedFile(filePath, records); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d records\n", filePath, len(records))
	fmt.Println("\nRun the API with SEED_ENABLED=true to import it on startup.")
}

func createSeedFile(filePath string, records []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	defer gz.Close()

	for _, record := range records {
		if _, err := gz.Write([]byte(record + "\n")); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}
