package thethacore_test

import (
	"fmt"
	"log"
)

import thethacore "gopkg.in/thethacore.v1"

func ExampleParse() {
	src := `# Comment line
<general>
app_name == "TestApp"
version == 1.0
enabled == True`
	doc, err := thethacore.Parse(src)
	if err != nil {
		log.Fatalf("Failed to parse ThethaCore data: %s", err)
	}
	general, _ := doc.Section("general")
	for _, key := range general.Keys() {
		v, _ := general.Get(key)
		fmt.Printf("%s == %s\n", key, v)
	}
	// Output: app_name == "TestApp"
	// version == 1
	// enabled == True
}

func ExampleParse_nestedSections() {
	src := `<database<advanced>>
pool_size == 10`
	doc, err := thethacore.Parse(src)
	if err != nil {
		log.Fatalf("Failed to parse ThethaCore data: %s", err)
	}
	fmt.Println(doc.Sections())
	// Output: [database/advanced]
}

func ExampleParse_error() {
	src := `<general>
version = 1.0`
	_, err := thethacore.Parse(src)
	fmt.Println(err)
	// Output: syntax error on line 2: "version = 1.0"
}

func ExampleReadStringInto() {
	src := `# Comment line
<section>
name == "value"`
	cfg := struct {
		Section struct {
			Name string
		}
	}{}
	err := thethacore.FatalOnly(thethacore.ReadStringInto(&cfg, src))
	if err != nil {
		log.Fatalf("Failed to parse ThethaCore data: %s", err)
	}
	fmt.Println(cfg.Section.Name)
	// Output: value
}

func ExampleReadStringInto_nestedSections() {
	src := `<profile<work>>
color == "white"

<profile<home>>
color == "black"
`
	cfg := struct {
		Profile map[string]*struct {
			Color string
		}
	}{}
	err := thethacore.FatalOnly(thethacore.ReadStringInto(&cfg, src))
	if err != nil {
		log.Fatalf("Failed to parse ThethaCore data: %s", err)
	}
	fmt.Printf("%s %s\n", cfg.Profile["work"].Color, cfg.Profile["home"].Color)
	// Output: white black
}

func ExampleReadStringInto_typedValues() {
	src := `<server>
ports == [8080, 8081]
labels == { "env" == "prod", "tier" == "db" }`
	cfg := struct {
		Server struct {
			Ports  []int
			Labels map[string]string
		}
	}{}
	err := thethacore.FatalOnly(thethacore.ReadStringInto(&cfg, src))
	if err != nil {
		log.Fatalf("Failed to parse ThethaCore data: %s", err)
	}
	fmt.Println(cfg.Server.Ports, cfg.Server.Labels["env"])
	// Output: [8080 8081] prod
}
