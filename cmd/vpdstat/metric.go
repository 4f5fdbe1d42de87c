package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

type metricCollector struct {
	m []prometheus.Metric
}

func (mc *metricCollector) Collect(c chan<- prometheus.Metric) {
	for _, m := range mc.m {
		c <- m
	}
}

func (mc *metricCollector) Describe(c chan<- *prometheus.Desc) {
}

func collect(state Devices) *metricCollector {
	var (
		mDriveInfo = prometheus.NewDesc(
			"scsi_vpd_drive_info",
			"Info metric regarding the detected SCSI devices",
			[]string{"device", "vendor", "model", "firmware", "protocol", "type"}, nil,
		)
		mPageSupported = prometheus.NewDesc(
			"scsi_vpd_vendor_page_supported",
			"Boolean describing whether the device returns a particular vendor specific VPD page",
			[]string{"device", "page", "acronym"}, nil,
		)
		mPageLength = prometheus.NewDesc(
			"scsi_vpd_vendor_page_length_bytes",
			"Length of a vendor specific VPD page as declared by the device",
			[]string{"device", "page"}, nil,
		)
	)
	mc := &metricCollector{}
	for _, s := range state {
		mc.m = append(mc.m,
			prometheus.MustNewConstMetric(mDriveInfo, prometheus.GaugeValue, 1,
				s.Device, s.Identity.Vendor, s.Identity.Model, s.Identity.Firmware, s.Identity.Protocol,
				fmt.Sprintf("0x%02x", s.Identity.DeviceType)))
		for _, p := range s.Pages {
			page := fmt.Sprintf("0x%02x", p.Code)
			sup := float64(0)
			if p.Supported {
				sup = 1
			}
			mc.m = append(mc.m, prometheus.MustNewConstMetric(mPageSupported, prometheus.GaugeValue, sup,
				s.Device, page, p.Acronym))
			// Length is only known for pages the device returned
			if p.Supported {
				mc.m = append(mc.m, prometheus.MustNewConstMetric(mPageLength, prometheus.GaugeValue,
					float64(p.Length), s.Device, page))
			}
		}
	}
	return mc
}

func writeMetrics(w io.Writer, state Devices) error {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(collect(state)); err != nil {
		return err
	}

	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to serialize metrics: %w", err)
		}
	}
	return nil
}

func outputMetrics(state Devices) {
	if err := writeMetrics(os.Stdout, state); err != nil {
		log.Fatalf("%v", err)
	}
}
