/*
 * GBA - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	monitor "github.com/rcornwell/GBA/command/monitor"
	cartridge "github.com/rcornwell/GBA/emu/cartridge"
	core "github.com/rcornwell/GBA/emu/core"
	debug "github.com/rcornwell/GBA/util/debug"
	logger "github.com/rcornwell/GBA/util/logger"
)

func main() {
	optBios := getopt.StringLong("bios", 'b', "", "BIOS image, 16 KiB")
	optRom := getopt.StringLong("rom", 'r', "", "Cartridge ROM image")
	optBackup := getopt.StringLong("backup", 's', "", "Backup save file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optTrace := getopt.StringLong("trace", 't', "", "Trace channels (cpu,mem,irq,cart or all)")
	optMonitor := getopt.BoolLong("monitor", 'm', "Start in the monitor console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
		debug.SetOutput(file)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	log := slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, *optTrace != ""))
	slog.SetDefault(log)
	if *optTrace != "" {
		debug.Enable(*optTrace)
	}

	if *optBios == "" || *optRom == "" {
		log.Error("Please specify a BIOS and a ROM image")
		getopt.Usage()
		os.Exit(1)
	}

	bios, err := os.ReadFile(*optBios)
	if err != nil {
		log.Error("Can't read BIOS image: " + err.Error())
		os.Exit(1)
	}

	rom, err := os.ReadFile(*optRom)
	if err != nil {
		log.Error("Can't read ROM image: " + err.Error())
		os.Exit(1)
	}

	// The save file sits beside the ROM unless given explicitly. A
	// missing file just means detection picks the media.
	savePath := *optBackup
	if savePath == "" {
		savePath = strings.TrimSuffix(*optRom, ".gba") + ".sav"
	}
	save, err := os.ReadFile(savePath)
	if err != nil {
		save = nil
	}

	cart, err := cartridge.New(cartridge.ROM(rom), save)
	if err != nil {
		log.Error("Bad cartridge: " + err.Error())
		os.Exit(1)
	}

	if err := core.Initialize(bios, cart); err != nil {
		log.Error("Can't initialize machine: " + err.Error())
		os.Exit(1)
	}
	log.Info("GBA started", "rom", *optRom)

	if *optMonitor {
		monitor.Console()
	} else {
		stop := make(chan struct{})
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			close(stop)
		}()
		core.UpdateKeypad(core.KeypadIdle)
		core.Run(stop)
	}

	if data := cart.SaveData(); data != nil {
		if err := os.WriteFile(savePath, data, 0o644); err != nil {
			log.Error("Can't write save file: " + err.Error())
			os.Exit(1)
		}
		log.Info("Save written", "path", savePath)
	}
	log.Info("Shutdown")
}
