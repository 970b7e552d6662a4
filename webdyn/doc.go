// Package webdyn renders register definitions in the Webdyn CSV format.
//
// The first line holds the header values (protocol, category, manufacturer,
// model, write code) separated by ';'. Each following line is one register
// as produced by [register.Register.CSVRow]:
//
//	modbusRTU;Inverter;HUAWEI;SUN2000-10K-LC0;0
//	1;3;30000_30;STR;;Model;Model;1;0;;4
//	2;3;32080;I32;;Active power;ActivePower;0.001;0;kW;4
//
// Nothing is escaped: a ';' inside a value ends up in the file as is.
package webdyn
